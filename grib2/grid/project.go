package grid

import "math"

// ProjectLatLonToXY inverts Coordinates: given a geographic point, it
// returns the fractional grid indices (x, y) at which that point would
// sit, in the same (i, j) sense Coordinates walks the grid in. Callers
// interpolating a point probe use this to locate the four (or one)
// surrounding grid cells before sampling.
//
// x and y are not rounded; a value of 2.5 means the point lies halfway
// between grid columns 2 and 3. Callers outside [0, Ni-1] x [0, Nj-1]
// (or the Nx/Ny equivalents) are off the grid.
func (g *LatLonGrid) ProjectLatLonToXY(lat, lon float64) (x, y float64) {
	lat1, lon1 := g.FirstGridPoint()
	di, dj := g.Increment()
	iNegative, jPositive, _ := g.ScanningFlags()

	if iNegative {
		di = -di
	}
	if !jPositive {
		dj = -dj
	}

	// Longitude may be given in either [-180, 180] or [0, 360); bring it
	// into the same winding as FirstGridPoint before dividing.
	for lon < lon1-180 {
		lon += 360
	}
	for lon > lon1+180 {
		lon -= 360
	}

	x = (lon - lon1) / di
	y = (lat - lat1) / dj
	return x, y
}

// ProjectLatLonToXY inverts Coordinates for the Lambert Conformal
// projection, using the same cone constant, F, and rho0 derivation.
func (g *LambertConformalGrid) ProjectLatLonToXY(lat, lon float64) (x, y float64) {
	lonV := float64(g.LoV) / 1e6
	latin1 := float64(g.Latin1) / 1e6
	latin2 := float64(g.Latin2) / 1e6
	lat1 := float64(g.La1) / 1e6

	latRad := lat * math.Pi / 180.0
	lonRad := lon * math.Pi / 180.0
	latin1Rad := latin1 * math.Pi / 180.0
	latin2Rad := latin2 * math.Pi / 180.0
	lonVRad := lonV * math.Pi / 180.0
	lat1Rad := lat1 * math.Pi / 180.0

	const earthRadius = 6371229.0

	var n float64
	if math.Abs(latin1-latin2) < 1e-6 {
		n = math.Sin(latin1Rad)
	} else {
		n = math.Log(math.Cos(latin1Rad)/math.Cos(latin2Rad)) /
			math.Log(math.Tan((math.Pi/4.0)+(latin2Rad/2.0))/math.Tan((math.Pi/4.0)+(latin1Rad/2.0)))
	}

	F := (math.Cos(latin1Rad) * math.Pow(math.Tan((math.Pi/4.0)+(latin1Rad/2.0)), n)) / n
	rho0 := earthRadius * F * math.Pow(math.Tan((math.Pi/4.0)+(lat1Rad/2.0)), -n)

	rho := earthRadius * F * math.Pow(math.Tan((math.Pi/4.0)+(latRad/2.0)), -n)

	// Longitude offsets from LoV, brought into [-pi, pi]
	wrap := func(d float64) float64 {
		for d > math.Pi {
			d -= 2 * math.Pi
		}
		for d < -math.Pi {
			d += 2 * math.Pi
		}
		return d
	}
	theta := n * wrap(lonRad-lonVRad)
	theta1 := n * wrap(float64(g.Lo1)/1e6*math.Pi/180.0-lonVRad)

	// Plane offsets from the first grid point (La1, Lo1)
	planeX := rho*math.Sin(theta) - rho0*math.Sin(theta1)
	planeY := rho0*math.Cos(theta1) - rho*math.Cos(theta)

	// Dx and Dy are stored in millimetres
	dx := float64(g.Dx) / 1000.0
	dy := float64(g.Dy) / 1000.0
	iPositive := (g.ScanningMode & 0x80) == 0
	jPositive := (g.ScanningMode & 0x40) != 0

	if iPositive {
		x = planeX / dx
	} else {
		x = float64(g.Nx-1) - planeX/dx
	}
	if jPositive {
		y = planeY / dy
	} else {
		y = float64(g.Ny-1) - planeY/dy
	}
	return x, y
}

// ProjectLatLonToXY inverts Coordinates for the Mercator projection,
// using the same scale factor and x0/y0 origin.
func (g *MercatorGrid) ProjectLatLonToXY(lat, lon float64) (x, y float64) {
	lat1 := float64(g.La1) / 1e6
	lon1 := float64(g.Lo1) / 1e6
	laD := float64(g.LaD) / 1e6

	lat1Rad := lat1 * math.Pi / 180.0
	laDRad := laD * math.Pi / 180.0
	lonRad := lon * math.Pi / 180.0
	latRad := lat * math.Pi / 180.0

	const earthRadius = 6371229.0

	dx := float64(g.Di) / 1000.0
	dy := float64(g.Dj) / 1000.0
	scaleFactor := 1.0 / math.Cos(laDRad)

	lon1Rad := lon1 * math.Pi / 180.0
	x0 := earthRadius * lon1Rad
	y0 := earthRadius * math.Log(math.Tan(math.Pi/4.0+lat1Rad/2.0))

	planeX := earthRadius * lonRad
	planeY := earthRadius * math.Log(math.Tan(math.Pi/4.0+latRad/2.0))

	deltaX := planeX - x0
	deltaY := planeY - y0

	iPositive := (g.ScanningMode & 0x80) == 0
	jPositive := (g.ScanningMode & 0x40) != 0

	if iPositive {
		x = deltaX / (dx * scaleFactor)
	} else {
		x = -deltaX / (dx * scaleFactor)
	}
	if jPositive {
		y = deltaY / (dy * scaleFactor)
	} else {
		y = -deltaY / (dy * scaleFactor)
	}
	return x, y
}

// ProjectLatLonToXY inverts Coordinates for the Polar Stereographic
// projection, using the same mcs/tcs scale terms and pole branch.
func (g *PolarStereographicGrid) ProjectLatLonToXY(lat, lon float64) (x, y float64) {
	lat1 := float64(g.La1) / 1e6
	lon1 := float64(g.Lo1) / 1e6
	laD := float64(g.LaD) / 1e6
	loV := float64(g.LoV) / 1e6

	lat1Rad := lat1 * math.Pi / 180.0
	lon1Rad := lon1 * math.Pi / 180.0
	laDRad := laD * math.Pi / 180.0
	loVRad := loV * math.Pi / 180.0
	latRad := lat * math.Pi / 180.0
	lonRad := lon * math.Pi / 180.0

	const earthRadius = 6371229.0

	dx := float64(g.Dx) / 1000.0
	dy := float64(g.Dy) / 1000.0

	mcs := math.Cos(math.Abs(laDRad))
	tcs := math.Tan((math.Pi/2.0 - math.Abs(laDRad)) / 2.0)

	isNorth := g.IsNorthPole()

	var x0, y0, planeX, planeY float64
	if isNorth {
		t1 := math.Tan((math.Pi/2.0 - lat1Rad) / 2.0)
		rho1 := earthRadius * mcs * t1 / tcs
		theta1 := lon1Rad - loVRad
		x0 = rho1 * math.Sin(theta1)
		y0 = -rho1 * math.Cos(theta1)

		t := math.Tan((math.Pi/2.0 - latRad) / 2.0)
		rho := earthRadius * mcs * t / tcs
		theta := lonRad - loVRad
		planeX = rho * math.Sin(theta)
		planeY = -rho * math.Cos(theta)
	} else {
		t1 := math.Tan((math.Pi/2.0 + lat1Rad) / 2.0)
		rho1 := earthRadius * mcs * t1 / tcs
		theta1 := lon1Rad - loVRad
		x0 = rho1 * math.Sin(theta1)
		y0 = rho1 * math.Cos(theta1)

		t := math.Tan((math.Pi/2.0 + latRad) / 2.0)
		rho := earthRadius * mcs * t / tcs
		theta := lonRad - loVRad
		planeX = rho * math.Sin(theta)
		planeY = rho * math.Cos(theta)
	}

	deltaX := planeX - x0
	deltaY := planeY - y0

	iPositive := (g.ScanningMode & 0x80) == 0
	jPositive := (g.ScanningMode & 0x40) != 0

	if iPositive {
		x = deltaX / dx
	} else {
		x = -deltaX / dx
	}
	if jPositive {
		y = deltaY / dy
	} else {
		y = -deltaY / dy
	}
	return x, y
}
