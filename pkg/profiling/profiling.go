package profiling

import (
	"fmt"
	"os"
	"runtime"

	"github.com/grafana/pyroscope-go"
)

const (
	ApplicationName = "colormeow.golang.app"
	DefaultServer   = "http://localhost:4040"
)

// Config builds the pyroscope configuration used for the application.
func Config(serverAddress string) pyroscope.Config {
	if serverAddress == "" {
		serverAddress = DefaultServer
	}
	return pyroscope.Config{
		ApplicationName: ApplicationName,
		ServerAddress:   serverAddress,
		Logger:          pyroscope.StandardLogger,
		Tags:            map[string]string{"hostname": os.Getenv("HOSTNAME")},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockCount,
			pyroscope.ProfileBlockDuration,
		},
	}
}

// SetupProfiling starts continuous profiling. Stop the returned profiler on exit.
func SetupProfiling(serverAddress string) (*pyroscope.Profiler, error) {
	runtime.SetMutexProfileFraction(5)
	runtime.SetBlockProfileRate(5)
	profiler, err := pyroscope.Start(Config(serverAddress))
	if err != nil {
		return nil, fmt.Errorf("error starting profiler: %w", err)
	}
	return profiler, nil
}
