package user

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Role        Role
	Settings    Settings
}

type Settings struct {
	Timezone string
	// ActivityTrackerId identifies the user in the desktop activity monitoring product.
	ActivityTrackerId string
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
