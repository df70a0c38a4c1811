// Package handler 提供 HTTP 请求处理器
// 本文件处理连接请求相关的 API 请求
package handler

import (
	"bondhon_server/internal/dto/request"
	"bondhon_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ProposeConnectionHandler 发起连接请求
// POST /connection/propose
// 请求体: request.ProposeConnectionRequest
// 响应: respond.ProposeConnectionRespond
func ProposeConnectionHandler(c *gin.Context) {
	var req request.ProposeConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Connection.ProposeConnection(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RespondConnectionHandler 接受或拒绝连接请求
// POST /connection/respond
// 请求体: request.RespondConnectionRequest
// 响应: nil
func RespondConnectionHandler(c *gin.Context) {
	var req request.RespondConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Connection.RespondToConnection(c.Request.Context(), req.RequestId, req.Decision); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CancelConnectionHandler 撤回待处理的连接请求
// POST /connection/cancel
// 请求体: request.CancelConnectionRequest
// 响应: nil
func CancelConnectionHandler(c *gin.Context) {
	var req request.CancelConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Connection.CancelPendingRequest(c.Request.Context(), req.RequestId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UnfriendConnectionHandler 解除已建立的连接
// POST /connection/unfriend
// 请求体: request.UnfriendConnectionRequest
// 响应: nil
func UnfriendConnectionHandler(c *gin.Context) {
	var req request.UnfriendConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Connection.UnfriendConnection(c.Request.Context(), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RelationshipStatusHandler 查询两人之间的关系状态
// GET /connection/status?self_email=xxx&other_email=xxx
// 查询参数: request.RelationshipStatusRequest
// 响应: respond.RelationshipStatusRespond
func RelationshipStatusHandler(c *gin.Context) {
	var req request.RelationshipStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Connection.FindRelationship(c.Request.Context(), req.SelfEmail, req.OtherEmail)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// PendingConnectionListHandler 查询发给某会员的待处理请求列表
// GET /connection/pending?member_email=xxx
// 查询参数: request.MemberListRequest
// 响应: []respond.PendingRequestRespond
func PendingConnectionListHandler(c *gin.Context) {
	var req request.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Connection.ListPendingRequests(c.Request.Context(), req.MemberEmail)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
