package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"flex_reviews/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func (r *Repo) InsertIfAbsent(ctx context.Context, rv domain.Review) (domain.Review, bool, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		string(rv.Source),
		string(rv.Type),
		string(rv.Status),
		valF64(rv.Rating),
		rv.PublicReview,
		valStr(rv.PrivateReview),
		rv.SubmittedAt,
		rv.GuestName,
		rv.PropertyID,
		rv.PropertyName,
		rv.IsApprovedForPublic,
		valStr(rv.ManagerNotes),
	)
	if err != nil {
		return domain.Review{}, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Review{}, false, err
	}
	created := affected == 1

	// Categories ride along only with the freshly created row; dedup hits
	// keep the stored record exactly as-is.
	if created {
		for _, c := range rv.Categories {
			if _, err := r.db.ExecContext(ctx, insertCategorySQL, id, c.Category, c.Rating); err != nil {
				return domain.Review{}, false, fmt.Errorf("insert category %q: %w", c.Category, err)
			}
		}
	}

	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, false, err
	}
	return stored, created, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Review, error) {
	row := r.db.QueryRowContext(ctx, getReviewSQL, id)
	rv, err := scanReview(row)
	if err == sql.ErrNoRows {
		return domain.Review{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Review{}, err
	}
	cats, err := r.categoriesFor(ctx, []int64{id})
	if err != nil {
		return domain.Review{}, err
	}
	rv.Categories = cats[id]
	return rv, nil
}

func (r *Repo) List(ctx context.Context, q domain.ReviewsQuery) ([]domain.Review, int, error) {
	where, args := buildWhere(q)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "submitted_at"
	}
	dir := "DESC"
	if q.SortOrder == "asc" {
		dir = "ASC"
	}
	// id as tiebreaker keeps pages stable across identical sort values
	query := "SELECT" + reviewColumns + "\nFROM reviews" + where +
		fmt.Sprintf("\nORDER BY %s %s, id %s\nLIMIT ? OFFSET ?", col, dir, dir)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Review
	var ids []int64
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
		ids = append(ids, rv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachCategories(ctx, out, ids); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func buildWhere(q domain.ReviewsQuery) (string, []any) {
	var conds []string
	var args []any

	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		conds = append(conds,
			"(LOWER(guest_name) LIKE ? OR LOWER(public_review) LIKE ? OR LOWER(property_name) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.Source != nil {
		conds = append(conds, "source = ?")
		args = append(args, string(*q.Source))
	}
	if q.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*q.Status))
	}
	if q.PropertyID != "" {
		conds = append(conds, "property_id = ?")
		args = append(args, q.PropertyID)
	}
	if q.MinRating != nil {
		conds = append(conds, "rating >= ?")
		args = append(args, *q.MinRating)
	}
	if q.MaxRating != nil {
		conds = append(conds, "rating <= ?")
		args = append(args, *q.MaxRating)
	}
	if q.StartDate != nil {
		conds = append(conds, "submitted_at >= ?")
		args = append(args, *q.StartDate)
	}
	if q.EndDate != nil {
		conds = append(conds, "submitted_at <= ?")
		args = append(args, *q.EndDate)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}

func (r *Repo) UpdateModeration(ctx context.Context, id int64, patch domain.ModerationPatch) (domain.Review, error) {
	// Existence check first so a no-op patch still distinguishes 404.
	if _, err := r.GetByID(ctx, id); err != nil {
		return domain.Review{}, err
	}

	var sets []string
	var args []any
	if patch.IsApprovedForPublic != nil {
		sets = append(sets, "is_approved_for_public = ?")
		args = append(args, *patch.IsApprovedForPublic)
	}
	if patch.ManagerNotes != nil {
		sets = append(sets, "manager_notes = ?")
		args = append(args, *patch.ManagerNotes)
	}
	if len(sets) > 0 {
		args = append(args, id)
		query := "UPDATE reviews SET " + strings.Join(sets, ", ") + ", updated_at = CURRENT_TIMESTAMP WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return domain.Review{}, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) AllReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, allReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	var ids []int64
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
		ids = append(ids, rv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, out, ids); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) DistinctProperties(ctx context.Context) ([]domain.PropertyRef, error) {
	rows, err := r.db.QueryContext(ctx, distinctPropertiesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PropertyRef
	for rows.Next() {
		var ref domain.PropertyRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *Repo) PropertyName(ctx context.Context, propertyID string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, propertyNameSQL, propertyID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return name, err
}

func (r *Repo) DeleteByGuestNames(ctx context.Context, src domain.Source, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, 0, len(names)+1)
	args = append(args, string(src))
	for _, n := range names {
		args = append(args, n)
	}
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM reviews WHERE source = ? AND guest_name IN ("+placeholders+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ---- scanning helpers ----

type rowScanner interface{ Scan(dest ...any) error }

func scanReview(row rowScanner) (domain.Review, error) {
	var rv domain.Review
	var (
		source, typ, status  string
		rating               sql.NullFloat64
		privateReview, notes sql.NullString
	)
	if err := row.Scan(
		&rv.ID,
		&source,
		&typ,
		&status,
		&rating,
		&rv.PublicReview,
		&privateReview,
		&rv.SubmittedAt,
		&rv.GuestName,
		&rv.PropertyID,
		&rv.PropertyName,
		&rv.IsApprovedForPublic,
		&notes,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	); err != nil {
		return domain.Review{}, err
	}
	rv.Source = domain.Source(source)
	rv.Type = domain.ReviewType(typ)
	rv.Status = domain.Status(status)
	if rating.Valid {
		f := rating.Float64
		rv.Rating = &f
	}
	if privateReview.Valid {
		s := privateReview.String
		rv.PrivateReview = &s
	}
	if notes.Valid {
		s := notes.String
		rv.ManagerNotes = &s
	}
	return rv, nil
}

func (r *Repo) categoriesFor(ctx context.Context, ids []int64) (map[int64][]domain.ReviewCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(categoriesForSQL, placeholders), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.ReviewCategory)
	for rows.Next() {
		var c domain.ReviewCategory
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.Category, &c.Rating); err != nil {
			return nil, err
		}
		out[c.ReviewID] = append(out[c.ReviewID], c)
	}
	return out, rows.Err()
}

func (r *Repo) attachCategories(ctx context.Context, reviews []domain.Review, ids []int64) error {
	cats, err := r.categoriesFor(ctx, ids)
	if err != nil {
		return err
	}
	for i := range reviews {
		reviews[i].Categories = cats[reviews[i].ID]
	}
	return nil
}
