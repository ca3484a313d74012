package handler

import (
	"runtime"
	"time"

	"codearena/utils"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// SystemStatsHandler reports host and runtime health. Superadmin only;
// routed behind RequireRoles.
func SystemStatsHandler(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	memUsed, memTotal := utils.GetMemoryUsage()

	var rt runtime.MemStats
	runtime.ReadMemStats(&rt)

	utils.Success(c, gin.H{
		"uptime":       time.Since(startTime).Round(time.Second).String(),
		"cpu_percent":  utils.GetCPUUsage(),
		"memory_used":  memUsed,
		"memory_total": memTotal,
		"goroutines":   runtime.NumGoroutine(),
		"heap_alloc":   rt.HeapAlloc,
	})
}
