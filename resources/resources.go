package resources

import (
	"github.com/activecm/flowmon/config"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type (
	// Resources provides a data structure for passing system Resources
	Resources struct {
		Config *config.Config
		Log    *log.Logger
		// RunID is attached to every log line written for this invocation
		RunID string
	}
)

// InitResources grabs the configuration file and intitializes the configuration data
// returning a *Resources object which has all of the necessary configuration information
func InitResources(userConfig string) (*Resources, error) {
	conf, err := config.LoadConfig(userConfig)
	if err != nil {
		return nil, err
	}

	// Fire up the logging system
	log := initLogger(&conf.S.Log)
	if conf.S.Log.LogToFile {
		if err := addFileLogger(log, conf.S.Log.LogPath); err != nil {
			return nil, err
		}
	}

	//bundle up the system resources
	r := &Resources{
		Config: conf,
		Log:    log,
		RunID:  uuid.New().String(),
	}
	return r, nil
}

// Logger returns a log entry tagged with the run id
func (r *Resources) Logger() *log.Entry {
	return r.Log.WithField("run", r.RunID)
}
