package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMain(m *testing.M) {
	// Globals must exist before parallel tests touch them.
	testRegistry := prometheus.NewRegistry()
	if err := Init(testRegistry, "test"); err != nil {
		panic(err)
	}

	m.Run()
}
