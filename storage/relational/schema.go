package relational

import (
	"context"
	"fmt"
)

// schema is applied on every Open. Fragments in {{...}} are dialect types.
// Calendar dates are TEXT "YYYY-MM-DD" on both dialects so they compare and
// sort the same way everywhere.
const schema = `
-- Content family

CREATE TABLE IF NOT EXISTS users (
	id {{pk}},
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	email TEXT NOT NULL,
	full_name TEXT,
	profile_image TEXT,
	created_at {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS surahs (
	id {{pk}},
	number INTEGER NOT NULL UNIQUE,
	name TEXT NOT NULL,
	english_name TEXT NOT NULL,
	english_name_translation TEXT NOT NULL,
	revelation_type TEXT NOT NULL,
	verses_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS verses (
	id {{pk}},
	surah_id BIGINT NOT NULL REFERENCES surahs(id),
	number INTEGER NOT NULL,
	text TEXT NOT NULL,
	translation TEXT NOT NULL,
	audio_url TEXT,
	UNIQUE (surah_id, number)
);

CREATE TABLE IF NOT EXISTS hadith_collections (
	id {{pk}},
	name TEXT NOT NULL,
	english_name TEXT NOT NULL,
	description TEXT NOT NULL,
	total_hadiths INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS hadiths (
	id {{pk}},
	collection_id BIGINT NOT NULL REFERENCES hadith_collections(id),
	number INTEGER NOT NULL,
	text TEXT NOT NULL,
	translation TEXT NOT NULL,
	chapter TEXT,
	grade TEXT
);

CREATE INDEX IF NOT EXISTS idx_hadiths_collection
	ON hadiths(collection_id, number);

CREATE TABLE IF NOT EXISTS courses (
	id {{pk}},
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	level TEXT NOT NULL,
	duration TEXT NOT NULL,
	image_url TEXT,
	instructor_id BIGINT NOT NULL,
	rating INTEGER,
	review_count INTEGER,
	created_at {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS topics (
	id {{pk}},
	name TEXT NOT NULL,
	description TEXT,
	icon TEXT,
	posts_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS discussions (
	id {{pk}},
	topic_id BIGINT NOT NULL REFERENCES topics(id),
	user_id BIGINT NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	status TEXT NOT NULL,
	comments_count INTEGER NOT NULL,
	views_count INTEGER NOT NULL,
	created_at {{ts}} NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_discussions_topic
	ON discussions(topic_id, created_at DESC);

CREATE TABLE IF NOT EXISTS prayer_times (
	id {{pk}},
	date TEXT NOT NULL,
	location TEXT NOT NULL,
	fajr TEXT NOT NULL,
	dhuhr TEXT NOT NULL,
	asr TEXT NOT NULL,
	maghrib TEXT NOT NULL,
	isha TEXT NOT NULL,
	UNIQUE (date, location)
);

-- Organization family
-- departments.manager_id is checked in code: departments and employees
-- reference each other.

CREATE TABLE IF NOT EXISTS departments (
	id {{pk}},
	name TEXT NOT NULL,
	description TEXT,
	manager_id BIGINT,
	budget {{money}}
);

CREATE TABLE IF NOT EXISTS positions (
	id {{pk}},
	title TEXT NOT NULL,
	description TEXT,
	department_id BIGINT NOT NULL REFERENCES departments(id),
	salary_range TEXT,
	is_active BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS employees (
	id {{pk}},
	employee_id TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone TEXT,
	position_id BIGINT REFERENCES positions(id),
	department_id BIGINT REFERENCES departments(id),
	manager_id BIGINT REFERENCES employees(id),
	hire_date TEXT NOT NULL,
	termination_date TEXT,
	salary {{money}} NOT NULL,
	status TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_employees_name
	ON employees(last_name, first_name);
CREATE INDEX IF NOT EXISTS idx_employees_department
	ON employees(department_id);

CREATE TABLE IF NOT EXISTS attendance (
	id {{pk}},
	employee_id BIGINT NOT NULL REFERENCES employees(id),
	date TEXT NOT NULL,
	clock_in {{ts}},
	clock_out {{ts}},
	total_hours {{money}},
	status TEXT NOT NULL,
	notes TEXT,
	UNIQUE (employee_id, date)
);

CREATE INDEX IF NOT EXISTS idx_attendance_date
	ON attendance(date);

CREATE TABLE IF NOT EXISTS leave_types (
	id {{pk}},
	name TEXT NOT NULL,
	default_days INTEGER NOT NULL,
	is_paid BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS leave_requests (
	id {{pk}},
	employee_id BIGINT NOT NULL REFERENCES employees(id),
	leave_type_id BIGINT NOT NULL REFERENCES leave_types(id),
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	days_requested INTEGER NOT NULL,
	reason TEXT,
	status TEXT NOT NULL,
	approved_by BIGINT REFERENCES employees(id),
	approved_at {{ts}}
);

CREATE TABLE IF NOT EXISTS payroll (
	id {{pk}},
	employee_id BIGINT NOT NULL REFERENCES employees(id),
	month INTEGER NOT NULL,
	year INTEGER NOT NULL,
	basic_salary {{money}} NOT NULL,
	allowances {{money}} NOT NULL,
	deductions {{money}} NOT NULL,
	net_salary {{money}} NOT NULL,
	status TEXT NOT NULL,
	payment_date TEXT,
	UNIQUE (employee_id, month, year)
);

CREATE TABLE IF NOT EXISTS performance_reviews (
	id {{pk}},
	employee_id BIGINT NOT NULL REFERENCES employees(id),
	reviewer_id BIGINT NOT NULL REFERENCES employees(id),
	review_period TEXT NOT NULL,
	review_date TEXT NOT NULL,
	rating INTEGER,
	status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS training_programs (
	id {{pk}},
	title TEXT NOT NULL,
	description TEXT,
	duration TEXT,
	cost {{money}},
	is_mandatory BOOLEAN NOT NULL,
	is_active BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS employee_training (
	id {{pk}},
	employee_id BIGINT NOT NULL REFERENCES employees(id),
	training_program_id BIGINT NOT NULL REFERENCES training_programs(id),
	enrollment_date TEXT NOT NULL,
	completion_date TEXT,
	status TEXT NOT NULL,
	score INTEGER
);

CREATE TABLE IF NOT EXISTS job_postings (
	id {{pk}},
	title TEXT NOT NULL,
	department_id BIGINT NOT NULL REFERENCES departments(id),
	position_id BIGINT NOT NULL REFERENCES positions(id),
	location TEXT,
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	posted_date TEXT NOT NULL,
	closing_date TEXT
);

CREATE TABLE IF NOT EXISTS job_applications (
	id {{pk}},
	job_posting_id BIGINT NOT NULL REFERENCES job_postings(id),
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	status TEXT NOT NULL,
	applied_date TEXT NOT NULL
);
`

// migrate creates the database schema.
func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, s.dialect.types.Replace(schema)); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
