package dto

// ExportQuery represents parameters for exporting meetings to a workbook
type ExportQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=completed transcript_only failed"`
	Limit  int    `form:"limit,default=1000" binding:"min=1,max=10000"`
}
