package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxFormMemory = 32 << 20

// readForm 读取表单字段为字符串映射，支持 urlencoded、multipart 与 JSON 请求体。
// 同名字段只取第一个值，未提交的字段不出现在结果中。
func readForm(c *gin.Context) (map[string]string, error) {
	form := make(map[string]string)

	if c.ContentType() == gin.MIMEJSON {
		var raw map[string]interface{}
		if err := c.ShouldBindJSON(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			form[k] = jsonScalar(v)
		}
		return form, nil
	}

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	for k, vs := range c.Request.PostForm {
		if len(vs) > 0 {
			form[k] = vs[0]
		}
	}
	return form, nil
}

func jsonScalar(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// pageParam 解析页码，缺省或非法时为 1
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
