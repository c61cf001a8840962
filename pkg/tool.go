package pkg

// Contains 檢查 slice 中是否包含指定元素
func Contains[T comparable](list []T, target T) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}
