// Package handler 提供 HTTP 请求处理器
// 本文件处理会话与好友列表相关的 API 请求
package handler

import (
	"bondhon_server/internal/dto/request"
	"bondhon_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ConversationListHandler 获取会话列表
// GET /conversation/list?member_email=xxx
// 查询参数: request.MemberListRequest
// 响应: []respond.ConversationListRespond
func ConversationListHandler(c *gin.Context) {
	var req request.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Conversation.ListConversations(c.Request.Context(), req.MemberEmail)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// FriendListHandler 获取好友列表（仅含资料已过审的对方）
// GET /friend/list?member_email=xxx
// 查询参数: request.MemberListRequest
// 响应: []respond.FriendListRespond
func FriendListHandler(c *gin.Context) {
	var req request.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Conversation.ListFriends(c.Request.Context(), req.MemberEmail)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
