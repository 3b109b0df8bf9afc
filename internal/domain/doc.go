// Package domain contains the core business entities of the learning tracker:
// users, categories, courses, subscriptions, study sessions and the login
// session. It owns natural-key normalization and entity validation and is
// independent of any storage or delivery mechanism.
package domain
