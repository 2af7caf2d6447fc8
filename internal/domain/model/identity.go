package model

// 認証済みリクエストの主体。トークン発行時と検証時の両方で使う。
type Identity struct {
	Subject     string   `json:"username"`
	Authorities []string `json:"authorities"`
}

// 指定のいずれかの権限を持っていればtrue
func (i Identity) HasAnyAuthority(names ...string) bool {
	for _, n := range names {
		for _, a := range i.Authorities {
			if a == n {
				return true
			}
		}
	}
	return false
}
