package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nabil/snipdrop/internal/model"
	"github.com/nabil/snipdrop/internal/repository"
)

// InteractionDB implements repository.InteractionRepository over the
// interactions table.
type InteractionDB struct {
	conn *sql.DB
}

// Compile-time check that *InteractionDB implements the interface.
var _ repository.InteractionRepository = (*InteractionDB)(nil)

// Create inserts an interaction row and fills in the generated ID and
// timestamp. There is no uniqueness constraint — identical interactions
// from the same user on the same snippet each get their own row.
func (i *InteractionDB) Create(ctx context.Context, interaction *model.Interaction) error {
	interaction.CreatedAt = time.Now().UTC()

	res, err := i.conn.ExecContext(ctx,
		`INSERT INTO interactions (user_id, snippet_id, action, created_at)
		 VALUES (?, ?, ?, ?)`,
		interaction.UserID,
		interaction.SnippetID,
		interaction.Action,
		interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting interaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading interaction insert id: %w", err)
	}
	interaction.ID = id

	return nil
}
