package layout

// Params holds the shape constants of every layout
// Zero values are not meaningful; start from DefaultParams
type Params struct {
	TableCols    int     `toml:"table_cols"`
	TableRows    int     `toml:"table_rows"`
	TableSpacing float64 `toml:"table_spacing"`

	SphereRadius float64 `toml:"sphere_radius"`

	HelixRadius  float64 `toml:"helix_radius"`
	HelixSpacing float64 `toml:"helix_spacing"`
	HelixStep    float64 `toml:"helix_step"`
	HelixYOffset float64 `toml:"helix_y_offset"`

	GridCols    int     `toml:"grid_cols"`
	GridRows    int     `toml:"grid_rows"`
	GridLayers  int     `toml:"grid_layers"`
	GridSpacing float64 `toml:"grid_spacing"`
}

// DefaultParams returns the stock arrangement in world units
func DefaultParams() Params {
	return Params{
		TableCols:    20,
		TableRows:    10,
		TableSpacing: 140,

		SphereRadius: 800,

		HelixRadius:  800,
		HelixSpacing: 5,
		HelixStep:    0.175,
		HelixYOffset: 450,

		GridCols:    5,
		GridRows:    4,
		GridLayers:  10,
		GridSpacing: 300,
	}
}

// Validate rejects params that would divide by zero or produce degenerate lattices
func (p Params) Validate() error {
	switch {
	case p.TableCols <= 0:
		return paramError("table_cols", p.TableCols)
	case p.TableRows <= 0:
		return paramError("table_rows", p.TableRows)
	case p.GridCols <= 0:
		return paramError("grid_cols", p.GridCols)
	case p.GridRows <= 0:
		return paramError("grid_rows", p.GridRows)
	case p.GridLayers <= 0:
		return paramError("grid_layers", p.GridLayers)
	case p.SphereRadius <= 0:
		return paramError("sphere_radius", p.SphereRadius)
	}
	return nil
}
