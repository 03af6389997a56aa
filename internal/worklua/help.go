package worklua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

func stringify(v lua.LValue) string {
	return fmt.Sprintf("%+v", convertLuaValue(v, map[*lua.LTable]bool{}))
}

func convertLuaValue(value lua.LValue, visited map[*lua.LTable]bool) interface{} {
	switch v := value.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return "?cycle"
		}
		visited[v] = true
		if n := v.Len(); n > 0 {
			xs := make([]interface{}, 0, n)
			for i := 1; i <= n; i++ {
				xs = append(xs, convertLuaValue(v.RawGetInt(i), visited))
			}
			return xs
		}
		m := map[interface{}]interface{}{}
		v.ForEach(func(k, vv lua.LValue) {
			m[convertLuaValue(k, visited)] = convertLuaValue(vv, visited)
		})
		return m
	default:
		return value.Type().String()
	}
}
