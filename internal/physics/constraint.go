package physics

// GearConstraint keeps ωa + Ratio·ωb = 0. With Ratio = teeth_b/teeth_a the
// pitch circles roll without slipping.
type GearConstraint struct {
	A, B  *Body
	Ratio float32
}

// Violation is the current velocity error.
func (c *GearConstraint) Violation() float32 {
	return c.A.AngularVelocity + c.Ratio*c.B.AngularVelocity
}

// solve applies one sequential impulse.
func (c *GearConstraint) solve() {
	k := c.A.invInertia + c.Ratio*c.Ratio*c.B.invInertia
	if k == 0 {
		return
	}
	lambda := -c.Violation() / k
	c.A.AngularVelocity += c.A.invInertia * lambda
	c.B.AngularVelocity += c.B.invInertia * c.Ratio * lambda
}
