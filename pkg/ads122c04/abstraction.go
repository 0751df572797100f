package ads122c04

// tx is the single place the device touches the bus. Bus errors are returned
// as-is.
func (adc *ADS122C04) tx(w, r []byte) error {
	err := adc.bus.Tx(adc.addr, w, r)
	if e := adc.log.Trace(); e.Enabled() {
		e.Hex("w", w).Hex("r", r).Err(err).Msg("tx")
	}
	return err
}

func (adc *ADS122C04) write(p []byte) error {
	return adc.tx(p, nil)
}

func (adc *ADS122C04) writeRead(w, r []byte) error {
	return adc.tx(w, r)
}
