package migration

// Hierarchy is the folder-tree schema owned by the hierarchy service.
// The unique index on (created_by, parent_folder, name) uses NULLS NOT
// DISTINCT so root folders (parent_folder IS NULL) are covered too; this
// closes the check-then-act race on sibling names at the store level.
var Hierarchy = Schema{
	Sentinel: "folders",
	Steps: []Step{
		{
			Name: "create_extension_uuid_ossp",
			SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		},
		{
			Name: "create_table_folders",
			SQL: `CREATE TABLE IF NOT EXISTS folders (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  parent_folder UUID        REFERENCES folders (id),
  created_by    UUID        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT uq_folders_sibling_name UNIQUE NULLS NOT DISTINCT (created_by, parent_folder, name)
);`,
		},
		{
			Name: "create_index_folders_parent",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders (parent_folder, created_by);`,
		},
		{
			Name: "create_index_folders_owner",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_folders_owner ON folders (created_by);`,
		},
	},
}

// Version is the document/version schema owned by the version service.
// Title uniqueness is scoped to the folder; a folder has exactly one owner,
// so no owner column is needed in the constraint.
var Version = Schema{
	Sentinel: "documents",
	Steps: []Step{
		{
			Name: "create_extension_uuid_ossp",
			SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		},
		{
			Name: "create_table_documents",
			SQL: `CREATE TABLE IF NOT EXISTS documents (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title      TEXT        NOT NULL,
  content    TEXT        NOT NULL DEFAULT '',
  folder_id  UUID        NOT NULL,
  created_by UUID        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT uq_documents_title_in_folder UNIQUE (folder_id, title)
);`,
		},
		{
			Name: "create_table_document_versions",
			SQL: `CREATE TABLE IF NOT EXISTS document_versions (
  id          BIGSERIAL   PRIMARY KEY,
  document_id UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  version     TEXT        NOT NULL,
  file_url    TEXT        NOT NULL,
  uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		},
		{
			Name: "create_index_documents_folder",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_folder ON documents (folder_id);`,
		},
		{
			Name: "create_index_documents_owner",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents (created_by);`,
		},
		{
			Name: "create_index_document_versions_document",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_document_versions_document ON document_versions (document_id);`,
		},
	},
}

// Users is the account schema owned by the users service.
var Users = Schema{
	Sentinel: "users",
	Steps: []Step{
		{
			Name: "create_extension_uuid_ossp",
			SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		},
		{
			Name: "create_table_users",
			SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  username      TEXT        NOT NULL UNIQUE,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		},
	},
}
