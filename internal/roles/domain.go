package roles

// Role is the reference shape served to the role picker.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
