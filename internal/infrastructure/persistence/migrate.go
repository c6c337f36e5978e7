package persistence

import (
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AllModels lists every persistence model in migration order: parents
// before children so foreign keys resolve.
func AllModels() []any {
	return []any{
		&models.UserModel{},
		&models.ProspectModel{},
		&models.TagModel{},
		&models.WorkerModel{},
		&models.ProspectWorkerModel{},
		&models.InteractionModel{},
		&models.ReminderModel{},
		&models.AttachmentModel{},
		&models.ProjectModel{},
		&models.DeliverableModel{},
		&models.TeamMemberModel{},
		&models.NoteModel{},
		&models.KanbanColumnModel{},
		&models.KanbanTaskModel{},
		&models.DiagramModel{},
	}
}

// AutoMigrate creates or updates the schema for every model
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(AllModels()...)
}

// Migrate runs AutoMigrate against an arbitrary gorm connection. Test
// setups use this with in-memory SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
