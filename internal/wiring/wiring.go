// Package wiring registers all Graft nodes the batch CLI needs. The
// server binary builds its Scheduler/Registry by hand (internal/app's
// NewServerRegistry) and does not import this package.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/Hemant2A2/Wizflow/internal/adapters/blueprint"
	_ "github.com/Hemant2A2/Wizflow/internal/adapters/cas"
	_ "github.com/Hemant2A2/Wizflow/internal/adapters/email"
	_ "github.com/Hemant2A2/Wizflow/internal/adapters/inmembus"
	_ "github.com/Hemant2A2/Wizflow/internal/adapters/logger"
	_ "github.com/Hemant2A2/Wizflow/internal/adapters/restapi"
	_ "github.com/Hemant2A2/Wizflow/internal/adapters/shell"
	_ "github.com/Hemant2A2/Wizflow/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/Hemant2A2/Wizflow/internal/app"
	_ "github.com/Hemant2A2/Wizflow/internal/engine/scheduler"
)
