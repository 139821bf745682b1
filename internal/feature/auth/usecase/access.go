package usecase

// CanDeleteAccount reports whether requesterID may delete the account accountID.
// Only the account itself may; there is no administrative override.
func CanDeleteAccount(requesterID, accountID uint) bool {
	return requesterID == accountID
}
