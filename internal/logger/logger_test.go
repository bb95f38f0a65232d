package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxaizer/job-intel/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_Cleanup_ClosesFileOpenedBySetup(t *testing.T) {

	cfg := config.LoggerConfig{
		LogLevel:   config.LevelInfo,
		OutputFile: filepath.Join(t.TempDir(), "app.log"),
	}

	Setup(cfg)
	defer log.SetOutput(os.Stdout)

	assert.NotNil(t, logFile)

	Cleanup()

	// a second close fails only if Cleanup closed the handle
	assert.Error(t, logFile.Close())
}
