package ads122c04

// LastRead returns the raw byte most recently read from register reg, or 0
// when reg is not a register index.
func (adc *ADS122C04) LastRead(reg uint8) byte {
	if reg >= NumRegisters {
		return 0
	}
	adc.mu.Lock()
	b := adc.regLR[reg]
	adc.mu.Unlock()
	return b
}

// LastWritten returns the raw byte most recently written to register reg
// (zero after Reset), or 0 when reg is not a register index.
func (adc *ADS122C04) LastWritten(reg uint8) byte {
	if reg >= NumRegisters {
		return 0
	}
	adc.mu.Lock()
	b := adc.regLW[reg]
	adc.mu.Unlock()
	return b
}

// readRegister reads a single register [reg].
func (adc *ADS122C04) readRegister(reg uint8) (byte, error) {
	buf := get1Byte()
	defer put1Byte(buf)

	adc.w[0] = readRegCmd(reg)
	if err := adc.writeRead(adc.w[:1], buf); err != nil {
		return 0, err
	}

	adc.regLR[reg] = buf[0]
	if reg == Reg2 {
		adc.cfg2 = DecodeRegister2(buf[0])
	}
	return buf[0], nil
}

// writeRegister writes a single register as one two-byte transaction.
func (adc *ADS122C04) writeRegister(r Register) error {
	idx, v := r.Index(), r.Byte()
	adc.w[0], adc.w[1] = writeRegCmd(idx), v
	if err := adc.write(adc.w[:2]); err != nil {
		return err
	}
	adc.wrote(r)
	return nil
}

func (adc *ADS122C04) wrote(r Register) {
	adc.regLW[r.Index()] = r.Byte()
	if r2, ok := r.(Register2); ok {
		adc.cfg2 = r2
	}
}

// writeRegisters frames every (WREG, value) pair in the given order into one
// buffer and sends it in a single transaction. A later entry for the same
// index overrides an earlier one on the device.
func (adc *ADS122C04) writeRegisters(regs ...Register) error {
	if len(regs) == 0 {
		return nil
	}

	out := make([]byte, 0, 2*len(regs))
	for _, r := range regs {
		out = append(out, writeRegCmd(r.Index()), r.Byte())
	}

	if err := adc.write(out); err != nil {
		return err
	}

	for _, r := range regs {
		adc.wrote(r)
	}
	return nil
}

// WriteRegisters writes regs in order using one bus transaction. Nothing is
// sent when regs is empty.
func (adc *ADS122C04) WriteRegisters(regs ...Register) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.writeRegisters(regs...)
}

// ReadReg0 reads and decodes register 0.
func (adc *ADS122C04) ReadReg0() (Register0, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	v, err := adc.readRegister(Reg0)
	if err != nil {
		return Register0{}, err
	}
	return DecodeRegister0(v), nil
}

// ReadReg1 reads and decodes register 1.
func (adc *ADS122C04) ReadReg1() (Register1, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	v, err := adc.readRegister(Reg1)
	if err != nil {
		return Register1{}, err
	}
	return DecodeRegister1(v), nil
}

// ReadReg2 reads register 2. It uses the same opcode as ReadDataReady and
// decodes the whole byte.
func (adc *ADS122C04) ReadReg2() (Register2, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	v, err := adc.readRegister(Reg2)
	if err != nil {
		return Register2{}, err
	}
	return DecodeRegister2(v), nil
}

// ReadReg3 reads and decodes register 3.
func (adc *ADS122C04) ReadReg3() (Register3, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	v, err := adc.readRegister(Reg3)
	if err != nil {
		return Register3{}, err
	}
	return DecodeRegister3(v), nil
}

// WriteReg0 writes register 0 in one transaction.
func (adc *ADS122C04) WriteReg0(r Register0) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.writeRegister(r)
}

// WriteReg1 writes register 1 in one transaction.
func (adc *ADS122C04) WriteReg1(r Register1) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.writeRegister(r)
}

// WriteReg2 writes register 2 in one transaction.
func (adc *ADS122C04) WriteReg2(r Register2) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.writeRegister(r)
}

// WriteReg3 writes register 3 in one transaction.
func (adc *ADS122C04) WriteReg3(r Register3) error {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.writeRegister(r)
}

// ReadAllRegisters reads registers 0 through 3, one transaction each.
func (adc *ADS122C04) ReadAllRegisters() (Registers, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.readAllRegisters()
}

func (adc *ADS122C04) readAllRegisters() (Registers, error) {
	var raw [NumRegisters]byte
	for reg := uint8(0); reg < NumRegisters; reg++ {
		v, err := adc.readRegister(reg)
		if err != nil {
			return Registers{}, err
		}
		raw[reg] = v
	}

	return Registers{
		R0: DecodeRegister0(raw[Reg0]),
		R1: DecodeRegister1(raw[Reg1]),
		R2: DecodeRegister2(raw[Reg2]),
		R3: DecodeRegister3(raw[Reg3]),
	}, nil
}
