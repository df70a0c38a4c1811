package constants

const (
	REDIS_TIMEOUT       = 1    // redis 缓存过期时间 (分钟)
	MESSAGE_BODY_MAX    = 2000 // 消息正文最大长度（字节）
	PLACEHOLDER_NAME    = "已注销用户" // 对方资料缺失时的占位昵称
	PLACEHOLDER_AVATAR  = "default_avatar.png"
	DB_RETRY_MAX        = 3  // 存储层瞬时故障重试次数
	DB_RETRY_BACKOFF_MS = 50 // 重试退避基数（毫秒）
)
