package job

import (
	"goblog/logger"
	"goblog/web/service"
)

// StatsJob logs user, post and visit counts once a day.
type StatsJob struct {
	userService  service.UserService
	blogService  service.BlogService
	visitService service.VisitService
}

func NewStatsJob() *StatsJob {
	return new(StatsJob)
}

// Run is the cron Job interface method.
func (j *StatsJob) Run() {
	users, err := j.userService.CountUsers()
	if err != nil {
		logger.Warning("stats job count users err:", err)
		return
	}
	posts, err := j.blogService.CountPosts()
	if err != nil {
		logger.Warning("stats job count posts err:", err)
		return
	}
	visits := j.visitService.Flush()
	logger.Infof("daily stats: %d users, %d posts, %d visits", users, posts, visits)
}
