package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/internal/config"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}
