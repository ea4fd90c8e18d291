package dto

// ── 人员模块 DTO ──

// CreatePersonRequest 创建人员请求
// name 的去空白与非空校验由 Service 层完成
type CreatePersonRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Role string `json:"role" binding:"omitempty,max=50"`
}

// PersonResponse 人员信息响应
type PersonResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// PersonBrief 记录中引用的人员摘要，仅暴露展示所需字段
type PersonBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
