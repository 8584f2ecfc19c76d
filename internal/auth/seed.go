package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// seedPasswordBytes is the number of random bytes for a generated seed password.
const seedPasswordBytes = 16

// Seed creates the bootstrap administrator and resident accounts.
//
// Any password left empty is generated randomly and logged with an
// action-required warning — it must be changed immediately.
//
// Returns the two accounts, administrator first.
func Seed(adminUsername, adminPassword, residentUsername, residentPassword string, logger *slog.Logger) (*User, *User, error) {
	adminPassword, err := ensurePassword(adminUsername, adminPassword, logger)
	if err != nil {
		return nil, nil, err
	}
	residentPassword, err = ensurePassword(residentUsername, residentPassword, logger)
	if err != nil {
		return nil, nil, err
	}

	admin, err := NewAdmin(adminUsername, adminPassword, "Administrator")
	if err != nil {
		return nil, nil, fmt.Errorf("creating seed administrator: %w", err)
	}

	resident, err := NewUser(residentUsername, residentPassword, "Resident")
	if err != nil {
		return nil, nil, fmt.Errorf("creating seed resident: %w", err)
	}

	logger.Info("seed accounts created",
		"admin", admin.Username,
		"resident", resident.Username,
	)

	return admin, resident, nil
}

// ensurePassword returns the configured password, or generates a random one
// and logs it when none is configured.
func ensurePassword(username, password string, logger *slog.Logger) (string, error) {
	if password != "" {
		return password, nil
	}

	raw := make([]byte, seedPasswordBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating seed password: %w", err)
	}
	generated := hex.EncodeToString(raw)

	logger.Warn("seed account password generated",
		"username", username,
		"password", generated,
		"action_required", "change this password immediately",
	)

	return generated, nil
}
