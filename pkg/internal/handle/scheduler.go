package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genomeinsight/pkg/internal/types"
	"github.com/yeisme/genomeinsight/pkg/scheduler"
)

// SchedulerHandlers 定时任务管理接口.
type SchedulerHandlers struct {
	sched *scheduler.Scheduler
}

// NewSchedulerHandlers 创建定时任务处理器.
func NewSchedulerHandlers(sched *scheduler.Scheduler) *SchedulerHandlers {
	return &SchedulerHandlers{sched: sched}
}

// Jobs 列出所有定时任务.
//
//	@Summary		定时任务列表
//	@Tags			调度
//	@Produce		json
//	@Success		200	{object}	types.SchedulerJobsResponse
//	@Router			/api/v1/scheduler/jobs [get]
func (h *SchedulerHandlers) Jobs(c *gin.Context) {
	c.JSON(http.StatusOK, types.SchedulerJobsResponse{
		Jobs:    h.sched.GetJobInfos(),
		Waiting: h.sched.JobsWaitingInQueue(),
	})
}

// Run 立即触发一次任务.
//
//	@Summary		立即执行任务
//	@Tags			调度
//	@Param			name	path	string	true	"任务名称"
//	@Success		202
//	@Failure		404	{object}	types.ErrorResponse
//	@Router			/api/v1/scheduler/jobs/{name}/run [post]
func (h *SchedulerHandlers) Run(c *gin.Context) {
	if err := h.sched.RunNow(c.Param("name")); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "job not found"})
			return
		}

		serviceError(c, err)

		return
	}

	c.Status(http.StatusAccepted)
}
