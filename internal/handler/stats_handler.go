// Package handler 提供 HTTP 请求处理器
// 本文件处理统计与健康检查相关的 API 请求
package handler

import (
	"net/http"

	"bondhon_server/internal/dto/request"
	"bondhon_server/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler 获取某会员的连接统计
// GET /stats?member_email=xxx
// 查询参数: request.MemberListRequest
// 响应: respond.StatsRespond
func StatsHandler(c *gin.Context) {
	var req request.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Stats.GetStats(c.Request.Context(), req.MemberEmail)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// HealthHandler 健康检查
// GET /health
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
