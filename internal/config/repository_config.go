package config

// RepositoryConfig describes the repository the git commit source watches.
type RepositoryConfig struct {
	RepoPath       string `json:"repo_path,omitempty" yaml:"repo_path,omitempty" validate:"required"`
	Remote         string `json:"remote,omitempty" yaml:"remote,omitempty" validate:"required"`
	Branch         string `json:"branch,omitempty" yaml:"branch,omitempty" validate:"required"`
	FolderBasePath string `json:"folder_base_path,omitempty" yaml:"folder_base_path,omitempty"`
	FetchRemote    bool   `json:"fetch_remote" yaml:"fetch_remote"`
	LookbackHours  int    `json:"lookback_hours,omitempty" yaml:"lookback_hours,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultRepositoryConfig creates default repository configuration
func NewDefaultRepositoryConfig() RepositoryConfig {
	return RepositoryConfig{
		RepoPath:       DefaultRepositoryPath,
		Remote:         DefaultRepositoryRemote,
		Branch:         DefaultRepositoryBranch,
		FolderBasePath: DefaultRepositoryFolderBasePath,
		FetchRemote:    true,
		LookbackHours:  DefaultRepositoryLookbackHours,
	}
}
