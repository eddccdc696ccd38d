package models

// Matrix is a date (or month) by user table of summed counts. Missing
// combinations are zero. Values[i][j] belongs to Labels[i] and Users[j].
type Matrix struct {
	Period Period   `json:"period"`
	Labels []string `json:"labels"`
	Users  []string `json:"users"`
	Values [][]int  `json:"values"`
}

func (m *Matrix) Empty() bool {
	return m == nil || len(m.Labels) == 0 || len(m.Users) == 0
}

// Column returns the series of one user, aligned with Labels.
func (m *Matrix) Column(j int) []int {
	col := make([]int, len(m.Labels))
	for i := range m.Labels {
		col[i] = m.Values[i][j]
	}
	return col
}
