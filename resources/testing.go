package resources

import (
	"testing"

	"github.com/activecm/flowmon/config"
)

//InitTestResources creates a default testing resource bundle
//which never touches the user's config or log directories
func InitTestResources(t *testing.T) *Resources {
	t.Helper()

	conf, err := config.LoadTestingConfig()
	if err != nil {
		t.Fatal(err)
	}

	return &Resources{
		Config: conf,
		Log:    initLogger(&conf.S.Log),
		RunID:  "test",
	}
}
