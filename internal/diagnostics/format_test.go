package diagnostics_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/config"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
)

func TestSupportsColorIsForcedOffInTestMode(t *testing.T) {
	prev := config.IsTestMode
	config.IsTestMode = true
	defer func() { config.IsTestMode = prev }()

	if diagnostics.SupportsColor(nil) {
		t.Fatal("SupportsColor must return false while config.IsTestMode is set")
	}
}
