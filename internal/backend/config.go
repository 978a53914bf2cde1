package backend

import (
	"fmt"

	"personal-budget/internal/config"
	"personal-budget/internal/core"
	"personal-budget/internal/source"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	kind := source.Kind(appConfig.Source)
	if !kind.IsValid() {
		return Config{}, fmt.Errorf("%w: %s", core.ErrUnknownSource, appConfig.Source)
	}

	return Config{
		Kind:       kind,
		BudgetFile: appConfig.BudgetFile,

		SQLiteDBPath: appConfig.SQLiteDBPath,

		GoogleSpreadsheetID:       appConfig.GoogleSpreadsheetID,
		GoogleSheetRange:          appConfig.GoogleSheetRange,
		GoogleServiceAccountJSON:  appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile:  appConfig.GoogleServiceAccountFile,
		GoogleApplicationCredsEnv: appConfig.GoogleApplicationCredsEnv,
	}, nil
}
