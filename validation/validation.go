// Package validation 基于字段描述符的表单校验，输入为字段名到原始字符串的映射，
// 输出为类型化的值集合或字段错误映射。
package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NaNMessage 数值字段无法解析时的提示
const NaNMessage = "Expected number, received nan"

var validate = validator.New()

// Field 单个字段的约束描述
type Field struct {
	Name    string // 表单字段名
	Tag     string // validator 标签，如 required、email、oneof=pending paid、gt=0
	Number  bool   // 是否先转换为数值再校验
	Message string // 违反约束时的提示
}

// Schema 字段描述符列表，按顺序校验
type Schema []Field

// Values 校验通过后的值，数值字段为 float64，其余为 string
type Values map[string]interface{}

// String 取字符串字段
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Float 取数值字段
func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// FieldErrors 字段名 -> 错误提示列表
type FieldErrors map[string][]string

// Add 追加一条字段错误
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Validate 同步校验输入；成功返回值集合，失败返回字段错误，二者恰有一个非 nil
func (s Schema) Validate(input map[string]string) (Values, FieldErrors) {
	values := make(Values, len(s))
	errs := make(FieldErrors)

	for _, f := range s {
		raw := input[f.Name]

		if f.Number {
			n, ok := CoerceNumber(raw)
			if !ok {
				errs.Add(f.Name, NaNMessage)
				continue
			}
			if err := validate.Var(n, f.Tag); err != nil {
				errs.Add(f.Name, f.Message)
				continue
			}
			values[f.Name] = n
			continue
		}

		if err := validate.Var(raw, f.Tag); err != nil {
			errs.Add(f.Name, f.Message)
			continue
		}
		values[f.Name] = raw
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// CoerceNumber 按表单数值语义转换：空白视为 0，非有限数视为无效
func CoerceNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
