package postgres

// schema is applied by Migrate. Every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS consultants (
    seq                   BIGSERIAL,
    id                    TEXT PRIMARY KEY,
    name                  TEXT NOT NULL,
    skills                TEXT[] NOT NULL DEFAULT '{}',
    expertise             TEXT[] NOT NULL DEFAULT '{}',
    years_experience      INTEGER NOT NULL DEFAULT 0,
    preferences           TEXT[] NOT NULL DEFAULT '{}',
    gender                TEXT NOT NULL DEFAULT '',
    ethnicity             TEXT NOT NULL DEFAULT '',
    conflicts             TEXT[] NOT NULL DEFAULT '{}',
    performance_rating    INTEGER NOT NULL DEFAULT 0,
    current_workload      INTEGER NOT NULL DEFAULT 0,
    status                TEXT NOT NULL DEFAULT 'available',
    assignment_project_id TEXT,
    assignment_start      DATE,
    assignment_end        DATE
);

CREATE TABLE IF NOT EXISTS projects (
    seq                     BIGSERIAL,
    id                      TEXT PRIMARY KEY,
    name                    TEXT NOT NULL,
    required_skills         TEXT[] NOT NULL,
    required_expertise      TEXT[] NOT NULL,
    difficulty              TEXT NOT NULL,
    team_size               INTEGER NOT NULL,
    timeline                DATE NOT NULL,
    estimated_duration_days INTEGER NOT NULL DEFAULT 0,
    actual_end_date         DATE
);

CREATE TABLE IF NOT EXISTS assignments (
    id         TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    payload    JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const (
	consultantColumns = `id, name, skills, expertise, years_experience, preferences, gender, ethnicity,
        conflicts, performance_rating, current_workload, status,
        assignment_project_id, assignment_start, assignment_end`

	projectColumns = `id, name, required_skills, required_expertise, difficulty, team_size, timeline,
        estimated_duration_days, actual_end_date`

	upsertConsultant = `
        INSERT INTO consultants (` + consultantColumns + `)
        VALUES (:id, :name, :skills, :expertise, :years_experience, :preferences, :gender, :ethnicity,
                :conflicts, :performance_rating, :current_workload, :status,
                :assignment_project_id, :assignment_start, :assignment_end)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name, skills = EXCLUDED.skills, expertise = EXCLUDED.expertise,
            years_experience = EXCLUDED.years_experience, preferences = EXCLUDED.preferences,
            gender = EXCLUDED.gender, ethnicity = EXCLUDED.ethnicity, conflicts = EXCLUDED.conflicts,
            performance_rating = EXCLUDED.performance_rating, current_workload = EXCLUDED.current_workload,
            status = EXCLUDED.status, assignment_project_id = EXCLUDED.assignment_project_id,
            assignment_start = EXCLUDED.assignment_start, assignment_end = EXCLUDED.assignment_end`

	upsertProject = `
        INSERT INTO projects (` + projectColumns + `)
        VALUES (:id, :name, :required_skills, :required_expertise, :difficulty, :team_size, :timeline,
                :estimated_duration_days, :actual_end_date)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name, required_skills = EXCLUDED.required_skills,
            required_expertise = EXCLUDED.required_expertise, difficulty = EXCLUDED.difficulty,
            team_size = EXCLUDED.team_size, timeline = EXCLUDED.timeline,
            estimated_duration_days = EXCLUDED.estimated_duration_days,
            actual_end_date = EXCLUDED.actual_end_date`

	lockAvailability = `
        SELECT status, assignment_project_id, assignment_start, assignment_end
        FROM consultants WHERE id = $1 FOR UPDATE`

	updateAvailability = `
        UPDATE consultants
        SET status = $2, assignment_project_id = $3, assignment_start = $4, assignment_end = $5
        WHERE id = $1`

	insertAssignment = `INSERT INTO assignments (id, project_id, payload) VALUES ($1, $2, $3)`
)
