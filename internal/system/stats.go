package system

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is the performance report of one invocation
type Stats struct {
	Images     int
	Elapsed    time.Duration
	RSSBytes   uint64
	CPUPercent float64
	NumCPU     int
}

// CollectStats samples the current process
func CollectStats(start time.Time, images int) (Stats, error) {
	s := Stats{
		Images:  images,
		Elapsed: time.Since(start),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s, err
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		return s, err
	}
	s.RSSBytes = mem.RSS

	// Best effort, some platforms do not expose these
	s.CPUPercent, _ = proc.CPUPercent()
	s.NumCPU, _ = cpu.Counts(true)

	return s, nil
}

// PerImage is the mean wall time per analysed image
func (s Stats) PerImage() time.Duration {
	if s.Images == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Images)
}

// Log writes the report regardless of the configured level
func (s Stats) Log(log zerolog.Logger) {
	log.Log().
		Int("images", s.Images).
		Dur("total", s.Elapsed).
		Dur("per_image", s.PerImage()).
		Float64("rss_mb", float64(s.RSSBytes)/(1<<20)).
		Float64("cpu_percent", s.CPUPercent).
		Int("cpus", s.NumCPU).
		Msg("performance report")
}
