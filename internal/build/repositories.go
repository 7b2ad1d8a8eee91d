package build

// TargetRepository resolves target keys to specifications.
type TargetRepository interface {
	Get(key string) (TargetSpecification, error)

	ListAll() ([]TargetSpecification, error)
}
