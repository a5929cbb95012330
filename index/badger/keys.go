package badger

// recordPrefix namespaces vector record keys so future key families
// (e.g. per-document indices) can share the database.
const recordPrefix = "vr:"

func makeRecordKey(id string) []byte {
	return []byte(recordPrefix + id)
}
