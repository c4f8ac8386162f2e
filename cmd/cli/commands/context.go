package commands

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/internal/config"
	"github.com/fkoester/equishift/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}

func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", name, err)
	}
	return id, nil
}
