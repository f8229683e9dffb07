package cronworker

// cron scheduler worker, create with 100% pure internal go library (using reflect select channel)

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"time"

	"github.com/meetnear/broadcast-service/pkg/codebase/factory"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory/types"
	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

type cronWorker struct {
	service  factory.ServiceFactory
	shutdown chan struct{}
}

// NewWorker create new cron worker
func NewWorker(service factory.ServiceFactory) factory.AppServerFactory {
	return &cronWorker{
		service:  service,
		shutdown: make(chan struct{}),
	}
}

func (c *cronWorker) Serve() {
	var jobs []schedulerJob
	var schedulerChannels []reflect.SelectCase
	for _, m := range c.service.GetModules() {
		if wh := m.WorkerHandler(types.Scheduler); wh != nil {
			var group types.WorkerHandlerGroup
			wh.MountHandlers(&group)
			for _, handler := range group.Handlers {
				jobName, args, interval := helper.ParseCronJobKey(handler.Pattern)
				duration, err := time.ParseDuration(interval)
				if err != nil {
					panic(fmt.Errorf("cron worker: invalid interval '%s' for job '%s'", interval, jobName))
				}

				job := schedulerJob{
					name:    jobName,
					args:    args,
					ticker:  time.NewTicker(duration),
					handler: handler.HandlerFunc,
				}

				schedulerChannels = append(schedulerChannels, reflect.SelectCase{
					Dir: reflect.SelectRecv, Chan: reflect.ValueOf(job.ticker.C),
				})
				jobs = append(jobs, job)
				fmt.Println(helper.StringYellow(fmt.Sprintf("[CRON-WORKER] (job): %-20s (interval): %-6s --> (module): %s", jobName, interval, m.Name())))
			}
		}
	}

	if len(jobs) == 0 {
		log.Println("cron worker: no scheduler handler found")
		return
	}

	// include shutdown channel in the select case list
	schedulerChannels = append(schedulerChannels, reflect.SelectCase{
		Dir: reflect.SelectRecv, Chan: reflect.ValueOf(c.shutdown),
	})
	shutdownIndex := len(schedulerChannels) - 1

	fmt.Printf("\x1b[34;1m⇨ Cron worker running with %d jobs\x1b[0m\n\n", len(jobs))
	for {
		chosen, _, ok := reflect.Select(schedulerChannels)
		if chosen == shutdownIndex {
			for _, job := range jobs {
				job.ticker.Stop()
			}
			return
		}
		if !ok {
			continue
		}

		go c.processJob(jobs[chosen])
	}
}

func (c *cronWorker) processJob(job schedulerJob) {
	trace, ctx := tracer.StartTraceWithContext(context.Background(), "CronScheduler")
	defer func() {
		if r := recover(); r != nil {
			trace.SetError(fmt.Errorf("%v", r))
		}
		logger.LogGreen("cron_scheduler > trace_url: " + tracer.GetTraceURL(ctx))
		trace.Finish()
	}()

	trace.SetTag("job_name", job.name)
	if err := job.handler(ctx, []byte(job.args)); err != nil {
		trace.SetError(err)
	}
}

func (c *cronWorker) Shutdown(ctx context.Context) {
	deferFunc := logger.LogWithDefer("Stopping cron job scheduler...")
	defer deferFunc()

	close(c.shutdown)
}

type schedulerJob struct {
	ticker  *time.Ticker
	name    string
	args    string
	handler types.WorkerHandlerFunc
}
