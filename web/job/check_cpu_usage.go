package job

import (
	"time"

	"goblog/logger"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CheckCpuJob logs a warning when CPU usage stays above the threshold.
type CheckCpuJob struct {
	threshold float64
}

func NewCheckCpuJob(threshold float64) *CheckCpuJob {
	return &CheckCpuJob{threshold: threshold}
}

// Run samples CPU usage over the last minute.
func (j *CheckCpuJob) Run() {
	percent, err := cpu.Percent(1*time.Minute, false)
	if err == nil && len(percent) > 0 && percent[0] > j.threshold {
		logger.Warningf("cpu usage %.2f%% above threshold %.2f%%", percent[0], j.threshold)
	}
}
