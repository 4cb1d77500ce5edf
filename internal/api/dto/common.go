package dto

// Resp 统一响应壳，code=0 表示成功
type Resp struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResp 分页列表响应
type ListResp struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// IDsReq 批量操作请求体
type IDsReq struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}
