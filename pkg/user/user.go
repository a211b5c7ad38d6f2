package user

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	// DisplayCurrency is the currency amounts are presented in. Calculations
	// happen in the plan currency; conversion for display is best-effort.
	DisplayCurrency string
	Locale          string
	Timezone        string
}
