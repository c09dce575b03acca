package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"dashboard/logger"
	"dashboard/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Invoices"

var exportHeaders = []string{"Customer", "Email", "Amount", "Date", "Status"}

// Export 导出发票为 Excel
// @Summary 导出发票
// @Description 按与列表页相同的关键字和排序导出全部匹配发票为 xlsx 文件
// @Tags 发票
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param query query string false "搜索关键字"
// @Success 200 {file} file "Excel 文件"
// @Failure 500 {object} Response "导出失败"
// @Router /dashboard/invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	rows, err := h.invoices.ExportInvoices(c.Request.Context(), c.Query("query"))
	if err != nil {
		PageError(c, err)
		return
	}

	buf, err := buildInvoiceWorkbook(rows)
	if err != nil {
		logger.WithComponent("api").WithError(err).Error("build invoice workbook failed")
		InternalError(c, "Failed to export invoices.")
		return
	}

	filename := fmt.Sprintf("invoices_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// buildInvoiceWorkbook 生成发票工作簿，末行为合计
func buildInvoiceWorkbook(rows []service.InvoiceRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, err
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return nil, err
	}

	f.SetColWidth(exportSheet, "A", "A", 24)
	f.SetColWidth(exportSheet, "B", "B", 30)
	f.SetColWidth(exportSheet, "C", "C", 14)
	f.SetColWidth(exportSheet, "D", "D", 14)
	f.SetColWidth(exportSheet, "E", "E", 10)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}
	f.SetCellStyle(exportSheet, "A1", "E1", headerStyle)

	var total int64
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), r.Email)
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), r.FormattedAmount)
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), r.Date)
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle)
		total += r.Amount
	}

	summaryRow := len(rows) + 2
	f.SetCellValue(exportSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(exportSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(exportSheet, fmt.Sprintf("C%d", summaryRow), service.FormatCurrency(total))
	f.SetCellValue(exportSheet, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("%d invoices", len(rows)))
	f.MergeCell(exportSheet, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("E%d", summaryRow))
	f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), summaryStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}
