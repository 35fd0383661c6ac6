package mysql

// LAST_INSERT_ID(id) makes the duplicate path surface the existing row's id
// through res.LastInsertId without a second round trip; rows-affected is 1
// for a fresh insert and 0 when the tuple already exists unchanged.
const insertReviewSQL = `
INSERT INTO reviews
  (source, type, status, rating, public_review, private_review, submitted_at,
   guest_name, property_id, property_name, is_approved_for_public, manager_notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)
`

const insertCategorySQL = `
INSERT INTO review_categories (review_id, category, rating)
VALUES (?, ?, ?)
`

const reviewColumns = `
  id, source, type, status, rating, public_review, private_review,
  submitted_at, guest_name, property_id, property_name,
  is_approved_for_public, manager_notes, created_at, updated_at`

const getReviewSQL = `SELECT` + reviewColumns + `
FROM reviews WHERE id = ?`

const allReviewsSQL = `SELECT` + reviewColumns + `
FROM reviews ORDER BY id`

const categoriesForSQL = `
SELECT id, review_id, category, rating
FROM review_categories
WHERE review_id IN (%s)
ORDER BY id
`

const distinctPropertiesSQL = `
SELECT DISTINCT property_id, property_name FROM reviews ORDER BY property_id
`

const propertyNameSQL = `
SELECT property_name FROM reviews WHERE property_id = ? LIMIT 1
`

// sortColumns is the allow-list mapping API sort keys to columns; anything
// else falls back to submitted_at.
var sortColumns = map[string]string{
	"submittedAt": "submitted_at",
	"rating":      "rating",
	"guestName":   "guest_name",
	"createdAt":   "created_at",
}
