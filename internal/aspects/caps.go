package aspects

// SysAdmin grants CAP_SYS_ADMIN, required by browsers that set up their
// own sandbox namespaces.
type SysAdmin struct {
	Base
}

func (SysAdmin) Name() string { return "SysAdmin" }

func (SysAdmin) RunArgs(Config) ([]string, error) {
	return []string{"--cap-add", "SYS_ADMIN"}, nil
}
