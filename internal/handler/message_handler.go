// Package handler 提供 HTTP 请求处理器
// 本文件处理消息相关的 API 请求
package handler

import (
	"bondhon_server/internal/dto/request"
	"bondhon_server/internal/service"

	"github.com/gin-gonic/gin"
)

// SendMessageHandler 发送消息
// POST /message/send
// 请求体: request.SendMessageRequest
// 响应: respond.SendMessageRespond
func SendMessageHandler(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Message.SendMessage(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MessageListHandler 获取会话内的消息列表（按发送时间升序）
// GET /message/list?conversation_id=xxx
// 查询参数: request.MessageListRequest
// 响应: []respond.MessageListRespond
func MessageListHandler(c *gin.Context) {
	var req request.MessageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Message.ListMessages(c.Request.Context(), req.ConversationId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkReadHandler 标记会话内发给读者的消息为已读
// POST /message/markRead
// 请求体: request.MarkReadRequest
// 响应: respond.MarkReadRespond
func MarkReadHandler(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Message.MarkRead(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UnreadCountHandler 获取某会员所有会话的未读消息总数
// GET /message/unreadCount?member_email=xxx
// 查询参数: request.MemberListRequest
// 响应: respond.UnreadCountRespond
func UnreadCountHandler(c *gin.Context) {
	var req request.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Message.UnreadCount(c.Request.Context(), req.MemberEmail)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
