package app

import (
	"github.com/simforge/ccxkit/internal/registry"
	"github.com/simforge/ccxkit/modules/elastic"
	"github.com/simforge/ccxkit/modules/heattransfer"
	"github.com/simforge/ccxkit/modules/static"
	"github.com/simforge/ccxkit/modules/thermal"
)

// coreModules is the definitive list of all kind modules that are compiled
// into the ccxkit binary.
var coreModules = []registry.Module{
	&elastic.Module{},
	&thermal.Module{},
	&static.Module{},
	&heattransfer.Module{},
}
