package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

// Health is a simple liveness check.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Metrics reports basic process statistics.
func (h *Handler) Metrics(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	c.JSON(http.StatusOK, gin.H{
		"goroutines":  runtime.NumGoroutine(),
		"heap_alloc":  mem.HeapAlloc,
		"total_alloc": mem.TotalAlloc,
		"num_gc":      mem.NumGC,
	})
}
