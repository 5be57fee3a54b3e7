package postgres

// Classify exposes classify for tests.
var Classify = classify
