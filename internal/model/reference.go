package model

// ReferenceList 规范名称及其缩写（按下标对应）
type ReferenceList struct {
	Names         []string `json:"names"`
	Abbreviations []string `json:"abbreviations"`
}

// ReferenceListFromRows 从客户/展会表构建参考名单
func ReferenceListFromRows(rows []Row, nameCol string) ReferenceList {
	var list ReferenceList
	for _, r := range rows {
		name := r.Get(nameCol)
		if name == "" {
			continue
		}
		abbr := r.Get(ColAbbreviations)
		if abbr == "" {
			abbr = r.Get(ColAbbr)
		}
		list.Names = append(list.Names, name)
		list.Abbreviations = append(list.Abbreviations, abbr)
	}
	return list
}

// Len 名单长度
func (l ReferenceList) Len() int {
	return len(l.Names)
}
