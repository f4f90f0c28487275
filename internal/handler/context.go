package handler

type ContextKey string

var (
	RoleCtxKey     ContextKey = "role"
	SubCtxKey      ContextKey = "sub"
	SessionUserCtx ContextKey = "sessionUser"
	UserInfoCtx    ContextKey = "userInfo"
	CreatorCtx     ContextKey = "creator"
	CampaignCtx    ContextKey = "campaign"
	DealCtx        ContextKey = "deal"
)
