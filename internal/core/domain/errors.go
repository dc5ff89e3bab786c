package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrSnapshotExists = errors.New("snapshot already recorded for period")

// Geocoding failure classes. The orchestrator maps these to the short
// user-visible messages shown alongside partial map data.
var ErrGeocodeNoResults = errors.New("no geocoding results")
var ErrGeocodeInvalidKey = errors.New("geocoding API key rejected")
var ErrGeocodeQuotaExceeded = errors.New("geocoding quota exceeded")
var ErrGeocodeNoResponse = errors.New("no response from geocoding API")
