package tfbsmatrix

/*BuildIndex return the distinct row keys and TFBS ids in first-occurrence order */
func BuildIndex(records []Record) (rows []RowKey, columns []string) {
	rowSet := NewOrderedSet[RowKey]()
	columnSet := NewOrderedSet[string]()

	for _, record := range records {
		rowSet.Add(record.Row())
		columnSet.Add(record.TFBSID)
	}

	return rowSet.Keys(), columnSet.Keys()
}
