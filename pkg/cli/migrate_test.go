package cli_test

import (
	"testing"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
	"github.com/taskbeacon/taskbeacon/pkg/cli"
)

func TestIndexConfig(t *testing.T) {
	cfg := cli.GetIndexConfig()

	var tasks *fireconf.Collection
	for i := range cfg.Collections {
		if cfg.Collections[i].Name == "tasks" {
			tasks = &cfg.Collections[i]
		}
	}
	gt.Value(t, tasks).NotNil().Required()
	gt.Array(t, tasks.Indexes).Length(1).Required()

	// The overdue query filters status with "in" and ranges over dueDate;
	// the composite index must list the equality field first
	fields := tasks.Indexes[0].Fields
	gt.Array(t, fields).Length(2).Required()
	gt.Value(t, fields[0].Path).Equal("status")
	gt.Value(t, fields[0].Order).Equal(fireconf.OrderAscending)
	gt.Value(t, fields[1].Path).Equal("dueDate")
	gt.Value(t, fields[1].Order).Equal(fireconf.OrderAscending)
}
