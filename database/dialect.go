package database

import "strings"

// 支持的驱动
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Dialect 查询层用到的方言差异：大小写不敏感匹配与文本转换
type Dialect struct {
	Name string
}

// DialectFor 根据驱动名返回方言，未知驱动按 postgres 处理
func DialectFor(driver string) Dialect {
	if driver == DriverMySQL {
		return Dialect{Name: DriverMySQL}
	}
	return Dialect{Name: DriverPostgres}
}

// ILike 返回对 expr 的大小写不敏感 LIKE 条件，含一个占位符
func (d Dialect) ILike(expr string) string {
	if d.Name == DriverMySQL {
		return "LOWER(" + expr + ") LIKE LOWER(?)"
	}
	return expr + " ILIKE ?"
}

// Text 将列转换为其存储的文本表示
func (d Dialect) Text(column string) string {
	if d.Name == DriverMySQL {
		return "CAST(" + column + " AS CHAR)"
	}
	return column + "::text"
}

// AnyILike 将多个表达式的 ILike 条件以 OR 连接，返回条件与参数个数
func (d Dialect) AnyILike(exprs ...string) (string, int) {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, d.ILike(e))
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}

// ContainsPattern 构造子串匹配参数，转义 LIKE 通配符
func ContainsPattern(q string) string {
	return "%" + EscapeLike(q) + "%"
}

// EscapeLike 转义 LIKE 查询中的通配符 % 和 _，防止用户输入改变匹配语义
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
